package rfidpath

import (
	"fmt"
	"path"
	"strings"
)

// ContentFile is the fixed file name a Tonie's content is stored under,
// within its RFID UID directory.
const ContentFile = "500304E0"

// Dir returns the directory a Tonie with the given 8-hex-character RFID UID
// is stored under: the UID's bytes in reverse order, hex-encoded.
func Dir(uidHex8 string) (string, error) {
	reversed, err := reverseHexBytes(uidHex8)
	if err != nil {
		return "", err
	}
	return reversed, nil
}

// ContentPath returns the full relative path ("<reversed UID>/500304E0")
// for a Tonie with the given RFID UID.
func ContentPath(uidHex8 string) (string, error) {
	dir, err := Dir(uidHex8)
	if err != nil {
		return "", err
	}
	return path.Join(dir, ContentFile), nil
}

// ParseUID extracts the RFID UID from a content path previously produced by
// ContentPath, reversing the byte order back.
func ParseUID(contentPath string) (string, error) {
	dir := path.Dir(contentPath)
	return reverseHexBytes(dir)
}

func reverseHexBytes(hex8 string) (string, error) {
	if len(hex8) != 8 {
		return "", fmt.Errorf("%w: got %q", ErrInvalidUID, hex8)
	}
	for _, r := range hex8 {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return "", fmt.Errorf("%w: got %q", ErrInvalidUID, hex8)
		}
	}
	var b strings.Builder
	for i := len(hex8) - 2; i >= 0; i -= 2 {
		b.WriteString(hex8[i : i+2])
	}
	return strings.ToUpper(b.String()), nil
}
