package tools

import (
	"fmt"
	"regexp"
)

var imagePattern = regexp.MustCompile(`^[a-z0-9]+(?:[._\-/][a-z0-9]+)*(?::[A-Za-z0-9._-]+)?$`)

// ValidateImageName checks that the given image reference looks like a valid
// name with an optional tag.
//
// Note: this is a basic syntactic check, not a full reference parser.
func ValidateImageName(image string) error {
	if !imagePattern.MatchString(image) {
		return fmt.Errorf("invalid image name: %s", image)
	}
	return nil
}
