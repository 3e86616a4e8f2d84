// Package effects contains the stock pedal modules. Each embeds
// *effect.Base, declares its parameter table once at package level and
// overrides the processing hooks.
package effects
