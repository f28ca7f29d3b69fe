// Package pipeline implements the chat message to HTML rendering pipeline.
//
// The pipeline is a fixed sequence of string passes, each consuming the
// output of the previous one:
//
//  1. Escape: HTML-significant characters of the raw input are escaped
//  2. Code fences become <pre><code> blocks
//  3. Single-backtick spans become <code> elements
//  4. Pipe-delimited lines become table rows, grouped into <table> containers
//  5. Headers, **bold**, *italic* and --- rules
//  6. Bullet and numbered lines are grouped into <ul>/<ol> lists per block
//  7. Remaining blocks are wrapped in <p> or preformatted <pre> elements
//
// Every tag in the output is introduced by one of these passes; nothing from
// the input survives as markup because escaping runs first.
//
// # Protected Regions
//
// Code produced by passes 2 and 3 is final. By default it is moved out of the
// working string and replaced by a placeholder token built from Unicode
// Private Use Area characters, so passes 4 to 7 cannot reinterpret its
// content (a "# include" or "**kwargs" line inside a fence stays literal, and
// blank lines inside a fence do not split it into paragraphs). The tokens are
// swapped back after pass 7. Legacy mode skips the substitution, lets every
// pass scan the whole string, and lets emphasis match across tags.
//
// A Pipeline holds only immutable configuration, so Run is safe for
// concurrent use.
package pipeline
