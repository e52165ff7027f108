package extract

import "os"

// PlainText reads .txt files verbatim.
type PlainText struct{}

func (PlainText) Extensions() []string { return []string{".txt"} }

func (PlainText) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
