package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SpotTheSpy/backend/internal/blob"
	apperrors "github.com/SpotTheSpy/backend/internal/errors"
)

// AssetHandler serves blob assets behind signed URLs. The token is the
// authorization; these routes skip the API key middleware so end users
// can fetch invitation images directly.
type AssetHandler struct {
	blobs  blob.Store
	signer *blob.URLSigner
	bucket string
}

func NewAssetHandler(blobs blob.Store, signer *blob.URLSigner, bucket string) *AssetHandler {
	return &AssetHandler{blobs: blobs, signer: signer, bucket: bucket}
}

func (h *AssetHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{token}", h.Get)

	return r
}

// GET /v1/assets/{token}
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	bucket, key, err := h.signer.Verify(token)
	if err != nil {
		writeError(w, apperrors.Unauthorized("Invalid or expired asset URL"))
		return
	}
	if bucket != h.bucket {
		writeError(w, apperrors.NotFound("Asset"))
		return
	}

	data, err := h.blobs.Get(r.Context(), key)
	if err != nil {
		writeError(w, apperrors.StoreUnavailable(err))
		return
	}
	if data == nil {
		writeError(w, apperrors.NotFound("Asset"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=60")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
