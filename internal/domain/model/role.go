package model

// Role is the closed set of operator roles.
type Role string

const (
	RoleGuest       Role = "guest"
	RoleAdmin       Role = "admin"
	RoleVendeur     Role = "vendeur"
	RoleLivreur     Role = "livreur"
	RoleCuisinier   Role = "cuisinier"
	RoleSuperviseur Role = "superviseur"
)

// ParseRole maps a stored role name to a Role. Unknown values become RoleGuest.
func ParseRole(s string) Role {
	switch r := Role(s); r {
	case RoleAdmin, RoleVendeur, RoleLivreur, RoleCuisinier, RoleSuperviseur:
		return r
	}
	return RoleGuest
}

// NavLink is one entry of a role's navigation menu.
type NavLink struct {
	Label string
	Path  string
}

// Navigation returns the ordered navigation entries available to a role.
func Navigation(role Role) []NavLink {
	switch role {
	case RoleAdmin:
		return []NavLink{
			{Label: "Tableau de bord", Path: "/admin"},
			{Label: "Commande rapide", Path: "/admin/commande-rapide"},
			{Label: "Commandes du jour", Path: "/admin/commandes"},
			{Label: "Menus", Path: "/admin/menus"},
			{Label: "Ingrédients", Path: "/admin/ingredients"},
			{Label: "Stock", Path: "/admin/stock"},
			{Label: "Comptabilité", Path: "/admin/comptabilite"},
			{Label: "Livraisons", Path: "/admin/livraisons"},
			{Label: "Comptes", Path: "/admin/comptes"},
		}
	case RoleSuperviseur:
		return []NavLink{
			{Label: "Tableau de bord", Path: "/superviseur"},
			{Label: "Commande rapide", Path: "/superviseur/commande-rapide"},
			{Label: "Commandes du jour", Path: "/superviseur/commandes"},
			{Label: "Stock", Path: "/superviseur/stock"},
			{Label: "Comptabilité", Path: "/superviseur/comptabilite"},
		}
	case RoleVendeur:
		return []NavLink{
			{Label: "Commande rapide", Path: "/vendeur/commande-rapide"},
			{Label: "Commandes du jour", Path: "/vendeur/commandes"},
		}
	case RoleLivreur:
		return []NavLink{
			{Label: "Livraisons", Path: "/livreur/livraisons"},
			{Label: "Statistiques", Path: "/livreur/statistiques"},
		}
	case RoleCuisinier:
		return []NavLink{
			{Label: "Commandes du jour", Path: "/cuisinier/commandes"},
			{Label: "Stock", Path: "/cuisinier/stock"},
		}
	case RoleGuest:
		return []NavLink{{Label: "Connexion", Path: "/login"}}
	}
	return nil
}
