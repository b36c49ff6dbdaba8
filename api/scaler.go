package api

import "vincit.fi/image-viewer/api/apitype"

type Scaler interface {
	RequestScaled(*apitype.ScalingRequest)
	Close()
}
