package config

const SourceFileExt = ".cat"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".cat", ".catena"}

// ProjectFileName is the per-project configuration file looked up when a
// directory is checked.
const ProjectFileName = "catena.yaml"

// Built-in type names
const (
	IntTypeName = "Int"
)

// GenVarPrefix is the prefix of type variables minted by the inference
// engine. The lexer rejects identifiers starting with '_', so generated
// names can never collide with user-written variables.
const GenVarPrefix = "_gen_"
