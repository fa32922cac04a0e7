package rfidpath

import "errors"

// ErrInvalidUID indicates the RFID UID is not exactly 8 hex characters.
var ErrInvalidUID = errors.New("rfidpath: RFID UID must be 8 hex characters")
