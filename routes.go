package main

import "net/http"

// Routes builds the full route table. Guard policy: camp reads and the
// registration funnel are public, camp/registration administration is
// token + admin, and a user's registrations and payments are readable only
// by their own token or an admin.
func (h *Handlers) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.HandleRoot)

	// Auth
	mux.HandleFunc("POST /jwt", h.HandleIssueToken)
	mux.HandleFunc("GET /logout", h.HandleLogout)

	// Users
	mux.HandleFunc("POST /users/{email}", h.HandleEnsureUser)
	mux.HandleFunc("GET /users/{email}", h.HandleGetUser)
	mux.HandleFunc("GET /users/role/{email}", h.HandleGetUserRole)
	mux.Handle("PUT /users/{email}", h.protect(true, h.HandleUpdateUser))

	// Camps
	mux.Handle("POST /camps", h.protect(true, h.HandleCreateCamp))
	mux.HandleFunc("GET /camps", h.HandleListCamps)
	mux.HandleFunc("GET /camps/{id}", h.HandleGetCamp)
	mux.HandleFunc("GET /camp/{id}", h.HandleGetCamp)
	mux.HandleFunc("GET /medical-camp/{id}", h.HandleGetCamp)
	mux.Handle("PUT /update-camp/{id}", h.protect(true, h.HandleUpdateCamp))
	mux.Handle("DELETE /delete-camp/{id}", h.protect(true, h.HandleDeleteCamp))

	// Registrations
	mux.HandleFunc("POST /participants", h.HandleRegisterParticipant)
	mux.Handle("GET /participants/{email}", h.protect(false, h.HandleListRegistrations))
	mux.Handle("GET /participant-all-camps/{email}", h.protect(false, h.HandleListRegistrations))
	mux.Handle("GET /participant/{id}", h.protect(false, h.HandleGetRegistration))
	mux.Handle("DELETE /cancel-registration/{id}", h.protect(false, h.HandleCancelRegistration))
	mux.Handle("DELETE /cancel-registered-participant/{id}", h.protect(true, h.HandleForceCancelRegistration))
	mux.Handle("PATCH /update-confirmation/{id}", h.protect(true, h.HandleUpdateConfirmation))

	// Payments
	mux.Handle("POST /create-payment-intent", h.protect(false, h.HandleCreatePaymentIntent))
	mux.Handle("POST /payments", h.protect(false, h.HandleRecordPayment))
	mux.Handle("GET /payments", h.protect(true, h.HandleListPayments))
	mux.Handle("GET /payments/{email}", h.protect(false, h.HandleListPaymentsByEmail))

	// Feedback
	mux.HandleFunc("POST /submit-feedback", h.HandleSubmitFeedback)
	mux.HandleFunc("GET /feedbacks", h.HandleListFeedback)

	return mux
}
