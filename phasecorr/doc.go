// Package phasecorr implements block-based motion estimation and
// bidirectional motion compensation for frame-rate up-conversion.
//
// A frame pair is divided into square blocks. For every block a phase
// plane correlation between the previous and current frame yields up to
// two candidate displacements; a third candidate comes from the median
// of already-estimated neighboring blocks. The candidate with the lowest
// sum-of-absolute-differences cost wins and is stored in the motion
// field. The compensator then projects every block by half its vector to
// synthesize the frame temporally halfway between the two inputs.
package phasecorr
