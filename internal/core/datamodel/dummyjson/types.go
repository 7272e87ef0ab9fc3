package dummyjson

type Company struct {
	Department string `json:"department"`
	Name       string `json:"name"`
	Title      string `json:"title"`
}

type User struct {
	ID         int64   `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Image      string  `json:"image"`
	Company    Company `json:"company"`
	Role       string  `json:"role,omitempty"`
	University string  `json:"university,omitempty"`
}

type UsersPage struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}

type Todo struct {
	ID        int64  `json:"id"`
	Todo      string `json:"todo"`
	Completed bool   `json:"completed"`
	UserID    int64  `json:"userId"`
}

type TodosPage struct {
	Todos []Todo `json:"todos"`
	Total int    `json:"total"`
}

type Reactions struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UserID    int64     `json:"userId"`
	Tags      []string  `json:"tags"`
	Reactions Reactions `json:"reactions"`
}

type PostsPage struct {
	Posts []Post `json:"posts"`
	Total int    `json:"total"`
}

type NewPost struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int64  `json:"userId"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries both token field names; newer API versions renamed token to accessToken.
type LoginResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
}

func (r LoginResponse) BearerToken() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}
