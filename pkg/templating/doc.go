/*
Package templating keeps the hand-authored pages of the Shortcut Sensei site
structurally consistent.

A Synchronizer applies an ordered pipeline of text transforms to each page:
header replacement, footer injection, asset link insertion, active navigation
marking and title substitution. Every transform is an exported pure function
over the page text, and every pipeline is idempotent: running it on its own
output changes nothing.

Canonical markup fragments are embedded in the binary. The headers pipeline
prefers a "header-template.html" file found in the site directory and falls
back to the embedded basic header when it is missing or empty.
*/
package templating
