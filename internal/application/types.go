package application

import "fileforge/internal/transport"

// Types exposed to the frontend bindings
type (
	FileUpload      = transport.FileUpload
	ProcessRequest  = transport.ProcessRequest
	ProcessResponse = transport.ProcessResponse
	FileResult      = transport.FileResult
	SaveFile        = transport.SaveFile
	SaveRequest     = transport.SaveRequest
	SaveResponse    = transport.SaveResponse
	AppStats        = transport.AppStats
)
