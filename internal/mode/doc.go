// Package mode partitions an ASP source into markup and script spans.
//
// The scanner only looks for the literal delimiters "<%" and "%>". It knows
// nothing about the script grammar, so a "%>" inside a VBScript string
// literal still closes the block, exactly as the ASP runtime does.
// A "<%" inside an open block is plain text of that block; blocks never nest.
//
// Scan is total: the returned spans always cover the file from the first
// byte to the last, with no gaps and no overlaps. A block missing its "%>"
// runs to the end of the file and is flagged Unterminated.
package mode
