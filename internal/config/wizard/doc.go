// Package wizard implements the interactive configuration generator used
// by `inithome init`. It asks for the home volume layout and owner
// identity, then writes an inithome.yaml the orchestration layer can ship
// into the init container.
package wizard
