package api

import "vincit.fi/image-viewer/api/apitype"

type DocumentLoader interface {
	LoadDocument(path string) (*apitype.Document, error)
	Purge()
}
