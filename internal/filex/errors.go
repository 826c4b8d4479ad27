package filex

import "errors"

var ErrEmpty = errors.New("file is empty")
