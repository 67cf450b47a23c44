package repository

import "errors"

// 見つからないを全Repositoryで統一
var ErrNotFound = errors.New("not found")
