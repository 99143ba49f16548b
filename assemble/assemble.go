// Package assemble hands generated assembly text to the system toolchain,
// producing a linked executable.
package assemble

import (
	"bytes"
	"fmt"
	"os/exec"
)

// Assemble writes asmText through cc's assembler/linker frontend, producing
// a static executable at outputPath. cc is invoked with "-x assembler -" so
// it reads AT&T-syntax assembly from stdin rather than from a file on disk.
func Assemble(asmText string, outputPath string) error {
	cc := exec.Command("cc", "-static", "-o", outputPath, "-x", "assembler", "-")
	cc.Stdin = bytes.NewBufferString(asmText)

	var stderr bytes.Buffer
	cc.Stderr = &stderr

	if err := cc.Run(); err != nil {
		return fmt.Errorf("assemble: cc failed: %w\n%s", err, stderr.String())
	}
	return nil
}
