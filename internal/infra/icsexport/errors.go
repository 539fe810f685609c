package icsexport

import "errors"

// ErrWrite возвращается, когда календарь не удалось записать
var ErrWrite = errors.New("icsexport: failed to write calendar")
