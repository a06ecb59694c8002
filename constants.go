package main

import "errors"

type Mode int

const (
	ModeNormal Mode = iota
	ModeShapes
	ModeFileInput
	ModeTextInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpOpenImage FileOperation = iota
	FileOpAddVector
	FileOpSave
	FileOpOpen
	FileOpExportPNG
	FileOpExportSVG
	FileOpExportFrames
)

type TextInputTarget int

const (
	TextInputPaletteColor TextInputTarget = iota
	TextInputRemoveColor
	TextInputSeed
	TextInputScale
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmClearCanvas
	ConfirmRemoveShape
	ConfirmOverwriteFile
)

type ActionType int

const (
	ActionCycle ActionType = iota
	ActionPaint
	ActionClear
	ActionLock
	ActionSample
	ActionShuffle
	ActionClearCanvas
	ActionResize
	ActionToggleShape
	ActionPalette
)

const (
	dragThreshold     = 5.0 // pixels before a press becomes a drag
	defaultCycleDelay = 4   // frames between hover cycles
	defaultFPS        = 30
	exportFrameCount  = 24
)

var (
	ErrInvalidSize     = errors.New("grid dimensions must be positive")
	ErrOutOfRange      = errors.New("cell out of range")
	ErrEmptyCatalog    = errors.New("no shapes enabled")
	ErrUnknownShape    = errors.New("unknown shape")
	ErrPaletteFull     = errors.New("palette already holds 4 colors")
	ErrDecode          = errors.New("decode failed")
	ErrInvalidScale    = errors.New("export scale must be a positive integer")
	ErrNothingToExport = errors.New("nothing to export")
	ErrUnknownAspect   = errors.New("unknown aspect ratio")
)
