package handler

import "campusnest/model"

type GenericEntity interface {
	ToPublicFormat() any
}

// responseFormatter returns the full record to admins and the public
// projection to everyone else.
func responseFormatter[I GenericEntity](data I, roles []string) any {
	for _, role := range roles {
		if role == model.RoleAdmin {
			return data
		}
	}

	return data.ToPublicFormat()
}

func responseArrFormatter[I GenericEntity](data []I, roles []string) []any {
	res := []any{}
	for _, v := range data {
		res = append(res, responseFormatter(v, roles))
	}
	return res
}
