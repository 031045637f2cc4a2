package domain

const (
	// ManifestFileName is the project manifest read at the root.
	ManifestFileName = "package.json"

	// SettingsFileName is the optional settings file read at the root.
	SettingsFileName = "preppy.yaml"

	// NodeModulesDir holds installed packages and their tool binaries.
	NodeModulesDir = "node_modules"

	// DirPerm is the default permission for created directories (rwxr-xr-x).
	DirPerm = 0o755

	// FilePerm is the default permission for written bundles (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission of executable bundles (rwxr-xr-x).
	ExecPerm = 0o755
)

// NodeEntryCandidates are tried in order for the library entry.
var NodeEntryCandidates = []string{
	"src/index.js",
	"src/index.jsx",
	"src/index.ts",
	"src/index.tsx",
	"src/main.js",
	"src/main.ts",
}

// BinaryEntryCandidates are tried in order for the executable entry.
var BinaryEntryCandidates = []string{
	"src/binary.js",
	"src/binary.ts",
	"src/script.js",
	"src/script.ts",
}

// Output folder override file names.
const (
	FolderNodeCommonJS = "node.commonjs.js"
	FolderNodeESModule = "node.esmodule.js"
	FolderBinary       = "binary.js"
)
