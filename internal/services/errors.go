package services

import "errors"

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrNameRequired       = errors.New("name is required")
	ErrCharacterRequired  = errors.New("character id is required")
	ErrInvalidFontSlot    = errors.New("invalid font slot")
	ErrFamilyRequired     = errors.New("font family is required")
	ErrBranchSwitchFailed = errors.New("branch switch failed")
)
