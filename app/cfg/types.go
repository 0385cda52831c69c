package cfg

type Cfg struct {
	// Input and output
	FeedsDir  string
	OutputDir string

	// Rendering
	Extensions       []string
	IgnoreExceptions bool
	Generator        string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
