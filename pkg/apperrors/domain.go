package apperrors

import "net/http"

// Factories and predeclared errors for the reservation domain.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and friends)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrConflict is the generic 409 factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidStatus flags an operation not allowed in the current state.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrSlotTaken is returned when the requested (court, date, start_time) is
// occupied by an active reservation in a blocking payment state.
var ErrSlotTaken = New(
	CodeConflict,
	"reservation",
	"Ese horario ya está reservado (o pendiente de pago)",
	http.StatusConflict,
)

// ErrReservationCancelled: payment operations require an active reservation.
var ErrReservationCancelled = New(
	CodeInvalidStatus,
	"reservation",
	"Reserva cancelada",
	http.StatusBadRequest,
)

// ErrPaymentRejected: a rejected payment is terminal and cannot be re-reported.
var ErrPaymentRejected = New(
	CodeInvalidStatus,
	"reservation",
	"Pago rechazado",
	http.StatusBadRequest,
)

var ErrNotReservationOwner = New(
	CodeForbidden,
	"reservation",
	"No permitido",
	http.StatusForbidden,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email ya registrado",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Credenciales inválidas",
	http.StatusUnauthorized,
)

// ErrInvalidResetToken covers unknown and malformed reset tokens.
var ErrInvalidResetToken = New(
	CodeInvalidToken,
	"auth",
	"Token inválido",
	http.StatusBadRequest,
)

var ErrResetTokenUsed = New(
	CodeInvalidToken,
	"auth",
	"Token ya usado",
	http.StatusBadRequest,
)

var ErrResetTokenExpired = New(
	CodeTokenExpired,
	"auth",
	"Token expirado",
	http.StatusBadRequest,
)
