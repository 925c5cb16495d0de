package config

import (
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var currentCharMap *charmap.Charmap = charmap.Windows1252

func findEncoding(name string) (*charmap.Charmap, error) {
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			if cm.String() == name {
				return cm, nil
			}
		}
	}
	return nil, errors.Errorf("Failed to find encoding %q", name)
}

// SetEncoding selects charset used to decode keyframe scripts
func SetEncoding(name string) error {
	cm, err := findEncoding(name)
	if err != nil {
		return err
	}
	currentCharMap = cm
	return nil
}

func ListEncodings() []string {
	list := make([]string, 0)
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			list = append(list, cm.String())
		}
	}
	return list
}

func GetEncoding() *charmap.Charmap {
	return currentCharMap
}

// DecodeText converts text in current encoding to utf8
func DecodeText(b []byte) ([]byte, error) {
	result, _, err := transform.Bytes(currentCharMap.NewDecoder(), b)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to decode text as %v", currentCharMap)
	}
	return result, nil
}
