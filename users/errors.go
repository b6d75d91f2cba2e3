package users

import "errors"

// ErrExists is returned by Repo.Insert when the user ID is already taken.
// Lazy creation treats it as "somebody else created the user first".
var ErrExists = errors.New("user already exists")
