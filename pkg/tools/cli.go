package tools

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ConfirmOperation asks the user for a yes/no confirmation on stdin.
// Anything other than "y" (case-insensitive) is a no.
func ConfirmOperation(s string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", s)
	text, _ := reader.ReadString('\n')
	text = strings.TrimSpace(text)
	return strings.EqualFold(text, "y")
}
