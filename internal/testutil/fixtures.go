package testutil

// Fixture payloads matching the shapes the decoding wrapper is exercised
// against: a user with nested address/geo/company objects, and a post
// with integer identifiers.

// User is the expected shape of UserJSON.
type User struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Address  Address `json:"address"`
	Phone    string  `json:"phone"`
	Website  string  `json:"website"`
	Company  Company `json:"company"`
}

// Address nests inside User and itself nests Geo.
type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     Geo    `json:"geo"`
}

// Geo holds string-typed coordinates.
type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// Company nests inside User.
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs"`
}

// Post is a flat shape with integer identifiers.
type Post struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// UserJSON is a complete user payload.
const UserJSON = `{
  "id": 1,
  "name": "Leanne Graham",
  "username": "Bret",
  "email": "Sincere@april.biz",
  "address": {
    "street": "Kulas Light",
    "suite": "Apt. 556",
    "city": "Gwenborough",
    "zipcode": "92998-3874",
    "geo": {
      "lat": "-37.3159",
      "lng": "81.1496"
    }
  },
  "phone": "1-770-736-8031 x56442",
  "website": "hildegard.org",
  "company": {
    "name": "Romaguera-Crannell",
    "catchPhrase": "Multi-layered client-server neural-net",
    "bs": "harness real-time e-markets"
  }
}`

// PostJSON is a complete post payload.
const PostJSON = `{
  "userId": 1,
  "id": 1,
  "title": "sunt aut facere repellat provident",
  "body": "quia et suscipit suscipit recusandae"
}`

// UserSchema requires the id and name fields, so a bare {"id":1} payload
// fails shape validation instead of decoding into a partial value.
const UserSchema = `{
  "type": "object",
  "required": ["id", "name"],
  "properties": {
    "id": {"type": "integer"},
    "name": {"type": "string"}
  }
}`

// SampleUser returns the struct value UserJSON decodes to.
func SampleUser() User {
	return User{
		ID:       1,
		Name:     "Leanne Graham",
		Username: "Bret",
		Email:    "Sincere@april.biz",
		Address: Address{
			Street:  "Kulas Light",
			Suite:   "Apt. 556",
			City:    "Gwenborough",
			Zipcode: "92998-3874",
			Geo: Geo{
				Lat: "-37.3159",
				Lng: "81.1496",
			},
		},
		Phone:   "1-770-736-8031 x56442",
		Website: "hildegard.org",
		Company: Company{
			Name:        "Romaguera-Crannell",
			CatchPhrase: "Multi-layered client-server neural-net",
			BS:          "harness real-time e-markets",
		},
	}
}

// SamplePost returns the struct value PostJSON decodes to.
func SamplePost() Post {
	return Post{
		UserID: 1,
		ID:     1,
		Title:  "sunt aut facere repellat provident",
		Body:   "quia et suscipit suscipit recusandae",
	}
}
