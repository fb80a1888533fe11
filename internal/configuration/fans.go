package configuration

// FansConfig configures how the levels of both fans are read and changed.
// Exactly one of the sub-configurations has to be set.
type FansConfig struct {
	Cmd  *CmdFansConfig  `json:"cmd,omitempty"`
	File *FileFansConfig `json:"file,omitempty"`
}

type CmdFansConfig struct {
	// GetLevels has to print the current cpu and gpu fan level, separated by whitespace
	GetLevels *ExecConfig `json:"getLevels"`
	// SetLevels args may contain the %cpu% and %gpu% placeholders
	SetLevels *ExecConfig `json:"setLevels"`
}

type FileFansConfig struct {
	Path string `json:"path"`
}

const (
	PlaceholderCpu = "cpu"
	PlaceholderGpu = "gpu"
)
