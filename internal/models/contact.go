package models

// Relationship - степень родства/связи с экстренным контактом
type Relationship string

const (
	RelationshipFamily    Relationship = "Family"
	RelationshipFriend    Relationship = "Friend"
	RelationshipPartner   Relationship = "Partner"
	RelationshipColleague Relationship = "Colleague"
	RelationshipOther     Relationship = "Other"
)

func (r Relationship) Valid() bool {
	switch r {
	case RelationshipFamily, RelationshipFriend, RelationshipPartner, RelationshipColleague, RelationshipOther:
		return true
	}
	return false
}

// EmergencyContact - экстренный контакт пользователя
type EmergencyContact struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Phone        string       `json:"phone"`
	Relationship Relationship `json:"relationship"`
	IsPrimary    bool         `json:"isPrimary"`
}

// ContactFields - редактируемые поля контакта
type ContactFields struct {
	Name         string
	Phone        string
	Relationship Relationship
	IsPrimary    bool
}

// ContactList - упорядоченный список контактов одного пользователя.
// В любом сохранённом состоянии не более одного элемента с IsPrimary.
// Все методы возвращают новый список и не меняют исходный.
type ContactList []EmergencyContact

// Add добавляет контакт в конец. Если новый контакт основной, снимает флаг со всех остальных.
func (l ContactList) Add(c EmergencyContact) ContactList {
	next := make(ContactList, 0, len(l)+1)
	for _, existing := range l {
		if c.IsPrimary {
			existing.IsPrimary = false
		}
		next = append(next, existing)
	}
	return append(next, c)
}

// Edit заменяет поля контакта с данным id. Возвращает false, если id не найден.
func (l ContactList) Edit(id string, f ContactFields) (ContactList, bool) {
	idx := l.indexOf(id)
	if idx < 0 {
		return l, false
	}

	next := make(ContactList, len(l))
	copy(next, l)
	for i := range next {
		if i == idx {
			next[i].Name = f.Name
			next[i].Phone = f.Phone
			next[i].Relationship = f.Relationship
			next[i].IsPrimary = f.IsPrimary
			continue
		}
		if f.IsPrimary {
			next[i].IsPrimary = false
		}
	}
	return next, true
}

// Remove удаляет контакт по id. Список может остаться без основного контакта.
func (l ContactList) Remove(id string) (ContactList, bool) {
	idx := l.indexOf(id)
	if idx < 0 {
		return l, false
	}
	next := make(ContactList, 0, len(l)-1)
	next = append(next, l[:idx]...)
	return append(next, l[idx+1:]...), true
}

// Primary возвращает основной контакт, если он есть
func (l ContactList) Primary() (EmergencyContact, bool) {
	for _, c := range l {
		if c.IsPrimary {
			return c, true
		}
	}
	return EmergencyContact{}, false
}

func (l ContactList) PrimaryCount() int {
	n := 0
	for _, c := range l {
		if c.IsPrimary {
			n++
		}
	}
	return n
}

func (l ContactList) indexOf(id string) int {
	for i, c := range l {
		if c.ID == id {
			return i
		}
	}
	return -1
}
