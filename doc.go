/*
Package cligrove assembles the command line interface of a pluggable tool from
the commands its features bring along. Features are plugins in the widest
sense: some are compiled in and announce themselves through a plugin group,
others surface only at runtime and might even take their time to do so. cligrove
gathers them all, lets the stragglers resolve concurrently, and then registers
their commands one after another into a single hierarchical command namespace.

That namespace is a grove rather than a tree: there is no artificial root
command node, just an ordered set of top-level commands and command groups,
each group growing its own sub-grove. Intermediate groups sprout automatically
as commands register deeper paths, and multiple features can happily share the
same group. What the grove will not tolerate are two commands fighting over the
same path, or a command trying to nest below another command.

Once all features have had their say, the grove is turned into a cobra command
tree and executed. The twist: leaf commands typically wrap external tools with
their own ideas about flags, so cligrove keeps cobra's flag parsing out of the
leaves and instead recovers each command's positional and unknown arguments
itself, from the original command line, the same way a seasoned argv splitter
would. The routing path segments get skipped, everything else reaches the
command untouched, a trailing “--help” included.

See the feature sub-packages for built-in features, such as “version” and
“commands”, and cmd/cligrove for a minimal host binary.
*/
package cligrove
