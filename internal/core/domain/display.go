package domain

type DisplayMode string

const (
	DisplayModeBoard DisplayMode = "board"
	DisplayModeAds   DisplayMode = "ads"
)
