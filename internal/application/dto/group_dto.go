package dto

// GroupSummary referencia corta a un grupo.
type GroupSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GroupResponse grupo con permisos y miembros.
type GroupResponse struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	DisplayName string        `json:"display_name"`
	ShopID      *int64        `json:"shop_id,omitempty"`
	Role        string        `json:"role,omitempty"`
	Permissions []string      `json:"permissions"`
	Members     []UserSummary `json:"members"`
}

// UpdateGroupMembersRequest reemplaza la lista de miembros del grupo.
type UpdateGroupMembersRequest struct {
	Members []int64 `json:"members"`
}
