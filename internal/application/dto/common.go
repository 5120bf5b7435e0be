package dto

// ErrorResponse cuerpo de error HTTP.
// Context se rellena en 403/404/500 para que el cliente pueda reconstruir la navegación.
type ErrorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Context *ErrorContext `json:"context,omitempty"`
}

// ErrorContext contexto de navegación de las páginas de error.
type ErrorContext struct {
	GroupName string        `json:"group_name"`
	FirstJob  string        `json:"first_job,omitempty"`
	Shops     []ShopSummary `json:"shops"`
	NavTree   []NavLink     `json:"nav_tree,omitempty"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// NavLink entrada del menú lateral; Subs solo en entradas agrupadas.
type NavLink struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Icon  string    `json:"icon"`
	URL   string    `json:"url,omitempty"`
	Subs  []NavLink `json:"subs,omitempty"`
}
