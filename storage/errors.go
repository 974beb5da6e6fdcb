package storage

import "errors"

var ErrItemNotFound = errors.New("item not found in storage")
var ErrItemWithIDAlreadyExists = errors.New("item with this id already exists")
var ErrDuplicateName = errors.New("an item with this name already exists")
var ErrDuplicateEmail = errors.New("an item with this email already exists")
