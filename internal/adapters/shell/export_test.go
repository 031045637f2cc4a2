package shell

var (
	ToolEnvironment = toolEnvironment
	LookPath        = lookPath
)
