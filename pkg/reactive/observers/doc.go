// Package observers provides ready-made consumers for observable streams.
//
// Logger writes notifications to a logrus logger. Writer renders them as
// lines on an io.Writer and Channel turns them into values on a Go channel.
package observers
