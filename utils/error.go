package utils

import "errors"

var ErrorOrgIdRequired = errors.New("organization id is required")
