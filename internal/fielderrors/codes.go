package fielderrors

// Codes shared by the server's validation and the client's local checks.
const (
	CodeAllFieldsRequired  = "value_error.all_fields_are_required"
	CodeInvalidCredentials = "value_error.invalid_credentials"
	CodeNoThreadsSelected  = "value_error.no_threads_selected"
	CodeMinLength          = "value_error.any_str.min_length"
	CodeMaxLength          = "value_error.any_str.max_length"
	CodeUsername           = "value_error.username"
	CodeUsernameTaken      = "value_error.username.not_available"
	CodeEmail              = "value_error.email"
	CodeEmailTaken         = "value_error.email.not_available"
	CodeThreadTitle        = "value_error.thread_title"
	CodeMinItems           = "value_error.list.min_items"
	CodeMaxItems           = "value_error.list.max_items"
	CodeUUID               = "value_error.uuid"

	CodeNotAuthorized = "auth_error.not_authorized"
	CodeNotModerator  = "auth_error.not_moderator"

	CodeCategoryNotFound = "category_error.not_found"
	CodeCategoryClosed   = "category_error.closed"
	CodeCategorySame     = "category_error.same"
	CodeThreadNotFound   = "thread_error.not_found"
	CodeThreadClosed     = "thread_error.closed"
)

// Codes lists every code above.
var Codes = []string{
	CodeAllFieldsRequired, CodeInvalidCredentials, CodeNoThreadsSelected,
	CodeMinLength, CodeMaxLength, CodeUsername, CodeUsernameTaken,
	CodeEmail, CodeEmailTaken, CodeThreadTitle, CodeMinItems, CodeMaxItems,
	CodeUUID, CodeNotAuthorized, CodeNotModerator, CodeCategoryNotFound,
	CodeCategoryClosed, CodeCategorySame, CodeThreadNotFound, CodeThreadClosed,
}
