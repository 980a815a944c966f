package runner

import (
	"os"
	"path/filepath"

	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"

	"github.com/boundaryx/boundaryx"
)

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}

func init() {
	// create the default config directory and a sample config.yaml if
	// neither exists yet, mirroring the teacher's runner/config.go init
	// (which seeds $HOME/.config/alterx/permutation.yaml the same way).
	dir := filepath.Join(getUserHomeDir(), ".config/boundaryx")
	if err := validateDir(dir); err != nil {
		gologger.Error().Msgf("boundaryx config dir not found and failed to create got: %v", err)
		return
	}
	if fileutil.FileExists(boundaryx.DefaultConfigFilePath) {
		return
	}
	if err := boundaryx.GenerateSample(boundaryx.DefaultConfigFilePath); err != nil {
		gologger.Error().Msgf("failed to save default config to %v got: %v", boundaryx.DefaultConfigFilePath, err)
	}
}

// validateDir checks if dir exists if not creates it
func validateDir(dirPath string) error {
	if fileutil.FolderExists(dirPath) {
		return nil
	}
	return fileutil.CreateFolder(dirPath)
}
