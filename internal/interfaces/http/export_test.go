package http

// OpenFormFile permite a los tests externos observar los archivos que abre el handler de visitas.
var OpenFormFile = &openFormFile
