package common

import (
	"io"
	"log"
)

// InitLogging routes the standard logger away from the interactive output stream.
func InitLogging(out io.Writer) {
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
