// Package felt implements the field element, the only primitive value of the
// Cairo VM. Every argument and return value crosses the VM boundary as a
// sequence of felts.
package felt
