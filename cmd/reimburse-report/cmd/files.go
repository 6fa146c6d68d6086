package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rezonia/reimburse-report/internal/normalizer"
)

func collectFiles(args []string, supported func(string) bool) ([]string, error) {
	var files []string

	for _, arg := range args {
		// Check if it's a glob pattern
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}

			if info.IsDir() {
				err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && supported(path) {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
			} else {
				files = append(files, arg)
			}
		} else {
			for _, match := range matches {
				info, err := os.Stat(match)
				if err != nil {
					continue
				}
				if !info.IsDir() && supported(match) {
					files = append(files, match)
				}
			}
		}
	}

	return files, nil
}

func isAttachmentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".ofd", ".xml", ".png", ".jpg", ".jpeg", ".tiff", ".tif":
		return true
	default:
		return false
	}
}

func isResponseFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".json"
}

// readResponse loads a saved analysis response
func readResponse(path string) (normalizer.RawResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return normalizer.Parse(data)
}

func writeFile(dir, name string, data []byte) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
