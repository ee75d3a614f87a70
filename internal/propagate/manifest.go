package propagate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LeJawa/dev-tools/internal/model"
)

// ManifestFile is the package manifest read from the workspace root.
const ManifestFile = "package.json"

// ReadManifest reads <workspace>/package.json and checks that it declares
// both "name" and "files".
func ReadManifest(workspace string) (model.PackageManifest, error) {
	path := filepath.Join(workspace, ManifestFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return model.PackageManifest{}, model.WrapCLIError(model.ExitManifestInvalid,
			fmt.Sprintf("Cannot read package.json (%s)", path), err)
	}

	var manifest model.PackageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return model.PackageManifest{}, model.WrapCLIError(model.ExitManifestInvalid,
			fmt.Sprintf("Cannot read package.json (%s)", path), err)
	}

	if !manifest.IsComplete() {
		return model.PackageManifest{}, model.NewCLIError(model.ExitManifestInvalid,
			"package.json is missing either 'name' or 'files' property")
	}
	return manifest, nil
}

// DependencyPrefix returns where the package is installed inside a
// consumer: node_modules followed by the "/"-separated segments of the
// package name, joined with the OS separator.
//
//	"@scope/pkg" → node_modules/@scope/pkg
func DependencyPrefix(manifest model.PackageManifest) string {
	segments := append([]string{"node_modules"}, strings.Split(manifest.Name, "/")...)
	return filepath.Join(segments...)
}
