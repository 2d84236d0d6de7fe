package open

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/meshlog/internal/record"
)

// OpenLog opens the source log of rec in $EDITOR (fallback less), at the
// first line mentioning an error when there is one.
func OpenLog(rec record.Unified) error {
	filePath := rec.LogPath
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file not found: %s", filePath)
	}

	lineNum := FirstErrorLine(filePath)

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	return EditorCommand(editor, filePath, lineNum).Run()
}

// FirstErrorLine returns the 1-based number of the first line containing
// "Error", or 1.
func FirstErrorLine(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 1
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		if strings.Contains(scanner.Text(), "Error") {
			return n
		}
	}
	return 1
}

// EditorCommand builds the command that opens filePath at lineNum.
func EditorCommand(editor, filePath string, lineNum int) *exec.Cmd {
	var cmd *exec.Cmd

	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		cmd = exec.Command(editor, fmt.Sprintf("+%d", lineNum), filePath)
	case strings.Contains(editor, "code"):
		cmd = exec.Command(editor, "--goto", filePath+":"+strconv.Itoa(lineNum))
	case strings.Contains(editor, "less"):
		cmd = exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	default:
		cmd = exec.Command(editor, filePath)
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}
