package http

import (
	"badajozrespira/src/domain/entities"
	"badajozrespira/src/services/blocks"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type addBlockRequest struct {
	Type entities.BlockType `json:"type"`
}

type addBlockResponse struct {
	Post  entities.BlogPost     `json:"post"`
	Block entities.ContentBlock `json:"block"`
}

type moveBlockRequest struct {
	Index     int              `json:"index"`
	Direction blocks.Direction `json:"direction"`
}

type attachImageRequest struct {
	URL string `json:"url"`
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type loginRequest struct {
	Email string `json:"email"`
}
