// Package framer assembles command lines from a byte stream.
//
// There is no delimiter in the command protocol. A command is whatever
// arrives back-to-back, ended by a silence gap of at least the configured
// timeout:
//
//	f := framer.New(src, 50*time.Millisecond)
//	if frame, ok := f.Next(); ok {
//		registry.Dispatch(frame.Bytes())
//	}
//
// Next returns immediately when the source has nothing to offer. Once a
// byte is available it busy-waits, reading until the source has been
// silent for the timeout. Bytes beyond MaxCommandLen-1 are read and
// discarded so the source is drained; the frame is truncated, never
// rejected.
//
// Zero bytes are treated like "no data", matching byte streams that pad
// with NUL.
package framer
