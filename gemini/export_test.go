package gemini

var Segments = segments
