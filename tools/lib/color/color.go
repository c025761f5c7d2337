// Copyright 2018 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package color paints terminal output with ANSI foreground colors.
package color

import (
	"fmt"
	"os"

	"go.fuchsia.dev/ninjawctr/tools/lib/isatty"
)

type Colorfn func(format string, a ...interface{}) string

const (
	escape = "\033["
	clear  = escape + "0m"
)

type ColorCode int

// Foreground text colors
const (
	BlackFg ColorCode = iota + 30
	RedFg
	GreenFg
	YellowFg
	BlueFg
	MagentaFg
	CyanFg
	WhiteFg
	DefaultFg
)

// Color formats strings, wrapping them in escape codes when enabled.
type Color interface {
	Black(format string, a ...interface{}) string
	Red(format string, a ...interface{}) string
	Green(format string, a ...interface{}) string
	Yellow(format string, a ...interface{}) string
	Blue(format string, a ...interface{}) string
	Magenta(format string, a ...interface{}) string
	Cyan(format string, a ...interface{}) string
	White(format string, a ...interface{}) string
	DefaultColor(format string, a ...interface{}) string
	WithColor(code ColorCode, format string, a ...interface{}) string
	Enabled() bool
}

// painter implements Color. A disabled painter only formats.
type painter struct {
	enabled bool
}

func (p painter) Black(format string, a ...interface{}) string {
	return p.WithColor(BlackFg, format, a...)
}

func (p painter) Red(format string, a ...interface{}) string {
	return p.WithColor(RedFg, format, a...)
}

func (p painter) Green(format string, a ...interface{}) string {
	return p.WithColor(GreenFg, format, a...)
}

func (p painter) Yellow(format string, a ...interface{}) string {
	return p.WithColor(YellowFg, format, a...)
}

func (p painter) Blue(format string, a ...interface{}) string {
	return p.WithColor(BlueFg, format, a...)
}

func (p painter) Magenta(format string, a ...interface{}) string {
	return p.WithColor(MagentaFg, format, a...)
}

func (p painter) Cyan(format string, a ...interface{}) string {
	return p.WithColor(CyanFg, format, a...)
}

func (p painter) White(format string, a ...interface{}) string {
	return p.WithColor(WhiteFg, format, a...)
}

func (p painter) DefaultColor(format string, a ...interface{}) string {
	return p.WithColor(DefaultFg, format, a...)
}

func (p painter) WithColor(code ColorCode, format string, a ...interface{}) string {
	s := fmt.Sprintf(format, a...)
	if !p.enabled || code == DefaultFg {
		return s
	}
	return fmt.Sprintf("%v%vm%v%v", escape, code, s, clear)
}

func (p painter) Enabled() bool {
	return p.enabled
}

// EnableColor selects when output is colored. It implements flag.Value.
type EnableColor int

const (
	ColorNever EnableColor = iota
	ColorAuto
	ColorAlways
)

var enableColorNames = map[EnableColor]string{
	ColorNever:  "never",
	ColorAuto:   "auto",
	ColorAlways: "always",
}

func isColorAvailable() bool {
	switch os.Getenv("TERM") {
	case "dumb", "":
		return false
	}
	return isatty.IsTerminal()
}

// NewColor returns a Color for the given policy. ColorAuto enables color only
// when stdout is a capable terminal.
func NewColor(enableColor EnableColor) Color {
	switch enableColor {
	case ColorAlways:
		return painter{enabled: true}
	case ColorAuto:
		return painter{enabled: isColorAvailable()}
	}
	return painter{}
}

func (ec *EnableColor) String() string {
	return enableColorNames[*ec]
}

func (ec *EnableColor) Set(s string) error {
	for v, name := range enableColorNames {
		if name == s {
			*ec = v
			return nil
		}
	}
	return fmt.Errorf("%s is not a valid color value", s)
}
