package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}

type UsuarioResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Nome     string  `json:"nome"`
	Email    *string `json:"email"`
	Perfil   string  `json:"perfil"`
	CaixaID  *string `json:"caixa_id"`
	Ativo    bool    `json:"ativo"`
}

type CriarUsuarioRequest struct {
	Username string  `json:"username" validate:"required,min=3"`
	Nome     string  `json:"nome"     validate:"required"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=4"`
	Perfil   string  `json:"perfil"   validate:"required,oneof=operador supervisor administrador"`
	// Permissoes is the serialized capability set; empty keeps profile defaults.
	Permissoes *string `json:"permissoes" validate:"omitempty,json"`
	CaixaID    *string `json:"caixa_id"   validate:"omitempty,uuid"`
}

type AtualizarUsuarioRequest struct {
	Nome       *string `json:"nome"`
	Email      *string `json:"email"    validate:"omitempty,email"`
	Password   *string `json:"password" validate:"omitempty,min=4"`
	Perfil     *string `json:"perfil"   validate:"omitempty,oneof=operador supervisor administrador"`
	Permissoes *string `json:"permissoes" validate:"omitempty,json"`
	CaixaID    *string `json:"caixa_id"   validate:"omitempty,uuid"`
}
