//go:build dacdebug

package core

const debugStaircase = true
