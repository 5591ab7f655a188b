// Package runtime handles command dispatch, event propagation and worker
// supervision. This file loads the embedded censored word lists.
package runtime

import (
	"bufio"
	"bytes"
	"embed"
	"io/fs"
	"strings"
	"taskroom/errors"
)

// CensoredData carries the result of the loading process including
// metadata for logging.
type CensoredData struct {
	Words     []string
	Languages []string
}

// CensoredLoader reads blacklisted words from embedded files, one .txt
// file per language.
type CensoredLoader struct {
	fs embed.FS
}

func NewCensoredLoader(f embed.FS) *CensoredLoader {
	return &CensoredLoader{fs: f}
}

// LoadAll scans the given directory in the embedded FS and parses every
// .txt file into a unique word list.
func (l *CensoredLoader) LoadAll(path string) (*CensoredData, error) {
	entries, err := fs.ReadDir(l.fs, path)
	if err != nil {
		return nil, err
	}

	var languages []string
	uniqueWords := make(map[string]struct{})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		// "en.txt" -> "en"
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := l.fs.ReadFile(path + "/" + entry.Name())
		if err != nil {
			return nil, err
		}

		// A scanner handles both \n and \r\n line endings correctly.
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				uniqueWords[line] = struct{}{}
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(uniqueWords) == 0 {
		return nil, errors.ErrEmptyWords
	}

	words := make([]string, 0, len(uniqueWords))
	for w := range uniqueWords {
		words = append(words, w)
	}

	return &CensoredData{Words: words, Languages: languages}, nil
}
