package game

import (
	"github.com/atotto/clipboard"
	"github.com/pkg/errors"
)

func writeClipboard(text string) error {
	if text == "" {
		text = " "
	}
	if clipboard.Unsupported {
		return errors.New("clipboard unsupported on this platform")
	}
	return errors.Wrap(clipboard.WriteAll(text), "write clipboard")
}
