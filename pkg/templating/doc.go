/*
Package templating renders name patterns with Go's text/template.

A pattern file describes how a full name is assembled from trained
generators, for example:

	{{title (gen "given")}} {{title (gen "family")}} of {{title (genWith "places" 5 9 "" "ia")}}

Templates are loaded from a directory: files ending in .tmpl are executable
patterns, files ending in .part hold shared {{define}} blocks. Generators are
registered by name, either directly with Register or by loading every stored
model from a ModelSource on Refresh. Templates can be reloaded at runtime
without restarting the application.
*/
package templating
