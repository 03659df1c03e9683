package list

import (
	"fmt"
	"sync"
)

// List es la interfaz de las listas genéricas que comparten los módulos
type List[T any] interface {
	Add(item T)                                 // Añadir un elemento al final de la lista
	Prepend(item T)                             // Añadir un elemento al principio de la lista
	Dequeue() (T, error)                        // Eliminar y devolver el primer elemento de la lista
	Find(predicate func(T) bool) (T, int, bool) // Primer elemento que cumple el predicado y su índice
	ForEach(callback func(T))                   // A cada elemento de la lista se le va aplicar la función que le pase
	Get(index int) (T, error)                   // Obtener un elemento a partir de un índice dado
	GetAll() []T                                // Copia de todos los elementos
	Insert(index int, item T) error             // Insertar un elemento en el índice dado
	Last() (T, error)                           // Último elemento sin removerlo
	Pop() (T, error)                            // Remover el último elemento de la lista
	Remove(index int)                           // Eliminar un elemento en el índice dado
	RemoveWhere(match func(T) bool) bool        // Elimina el primer elemento que cumple el predicado
	Set(index int, newValue T) error            // Modifica el valor de un elemento de la lista a partir de su índice.
	Size() int                                  // Retornar el tamaño de la lista
}

// ArrayList implementa List sobre un slice protegido por un RWMutex.
// El valor cero está listo para usarse.
type ArrayList[T any] struct {
	mu    sync.RWMutex
	items []T
}

// NewArrayList crea una lista con capacidad reservada.
func NewArrayList[T any](capacity int) *ArrayList[T] {
	return &ArrayList[T]{
		items: make([]T, 0, capacity),
	}
}

// Add inserta un elemento al final de la lista.
//
// Ejemplo:
//
//	func main() {
//		list := &ArrayList[int]{}
//		list.Add(10)
//		list.Add(20) // [10, 20]
//	}
func (list *ArrayList[T]) Add(item T) {
	list.mu.Lock()
	defer list.mu.Unlock()

	list.items = append(list.items, item)
}

// Prepend inserta un elemento al principio de la lista.
//
// Ejemplo:
//
//	func main() {
//		list := &ArrayList[int]{}
//		list.Add(10)
//		list.Prepend(20) // [20, 10]
//	}
func (list *ArrayList[T]) Prepend(item T) {
	list.mu.Lock()
	defer list.mu.Unlock()

	list.items = append(list.items, item)
	copy(list.items[1:], list.items[:len(list.items)-1])
	list.items[0] = item
}

// Dequeue elimina y devuelve el primer elemento de la cola.
// Si la lista está vacía retorna el valor "cero" de T y un error.
func (list *ArrayList[T]) Dequeue() (T, error) {
	list.mu.Lock()
	defer list.mu.Unlock()

	if len(list.items) == 0 {
		var zero T
		return zero, fmt.Errorf("list is empty")
	}
	value := list.items[0]
	list.items = list.items[1:]
	return value, nil
}

// Find permite buscar un elemento de la lista dado un predicado.
// Devuelve el elemento, su índice y si se encontró. Recorre desde el principio.
//
// Ejemplo:
//
//	func main() {
//		list := &ArrayList[int]{}
//		list.Add(10)
//		list.Add(20)
//
//		number, index, found := list.Find(func(number int) bool {
//			return number == 20
//		}) // 20, 1, true
//	}
func (list *ArrayList[T]) Find(predicate func(T) bool) (T, int, bool) {
	list.mu.RLock()
	defer list.mu.RUnlock()

	for i, item := range list.items {
		if predicate(item) {
			return item, i, true
		}
	}
	var zero T
	return zero, -1, false
}

// Get devuelve el elemento en el índice proporcionado.
func (list *ArrayList[T]) Get(index int) (T, error) {
	list.mu.RLock()
	defer list.mu.RUnlock()

	if index < 0 || index >= len(list.items) {
		var zero T
		return zero, fmt.Errorf("index out of range: %d", index)
	}
	return list.items[index], nil
}

// Insert inserta un elemento en la lista en el índice proporcionado.
//
// Ejemplo:
//
//	func main() {
//		list := &ArrayList[int]{}
//		list.Add(10)
//		list.Add(30)
//
//		_ = list.Insert(1, 100) // [10, 100, 30]
//	}
func (list *ArrayList[T]) Insert(index int, item T) error {
	list.mu.Lock()
	defer list.mu.Unlock()

	if index < 0 || index > len(list.items) {
		return fmt.Errorf("index out of range: %d", index)
	}
	list.items = append(list.items[:index], append([]T{item}, list.items[index:]...)...)
	return nil
}

// Last devuelve el último elemento sin sacarlo de la lista.
func (list *ArrayList[T]) Last() (T, error) {
	list.mu.RLock()
	defer list.mu.RUnlock()

	if len(list.items) == 0 {
		var zero T
		return zero, fmt.Errorf("list is empty")
	}
	return list.items[len(list.items)-1], nil
}

// Pop remueve el último elemento de la lista y lo devuelve.
//
// Ejemplo:
//
//	func main() {
//		list := &ArrayList[int]{}
//		list.Add(10)
//		list.Add(20)
//
//		value, _ := list.Pop()
//		fmt.Println("Valor: ", value) //Output: 20
//	}
func (list *ArrayList[T]) Pop() (T, error) {
	list.mu.Lock()
	defer list.mu.Unlock()

	if len(list.items) == 0 {
		var zero T
		return zero, fmt.Errorf("list is empty")
	}
	lastIndex := len(list.items) - 1
	item := list.items[lastIndex]
	list.items = list.items[:lastIndex]
	return item, nil
}

// Remove remueve un elemento de la lista a partir de su índice. Un índice inválido no hace nada.
func (list *ArrayList[T]) Remove(index int) {
	list.mu.Lock()
	defer list.mu.Unlock()

	if index >= 0 && index < len(list.items) {
		list.items = append(list.items[:index], list.items[index+1:]...)
	}
}

// RemoveWhere elimina el primer elemento que cumple match. Devuelve si eliminó algo.
func (list *ArrayList[T]) RemoveWhere(match func(T) bool) bool {
	list.mu.Lock()
	defer list.mu.Unlock()

	for i, item := range list.items {
		if match(item) {
			list.items = append(list.items[:i], list.items[i+1:]...)
			return true
		}
	}
	return false
}

// Set modifica el valor de un elemento de la lista a partir de su índice.
func (list *ArrayList[T]) Set(index int, newValue T) error {
	list.mu.Lock()
	defer list.mu.Unlock()

	if index < 0 || index >= len(list.items) {
		return fmt.Errorf("index out of range: %d", index)
	}
	list.items[index] = newValue
	return nil
}

// Size devuelve el tamaño de la lista.
func (list *ArrayList[T]) Size() int {
	list.mu.RLock()
	defer list.mu.RUnlock()

	return len(list.items)
}

// ForEach aplica callback a cada elemento, en orden. callback no debe modificar la lista.
func (list *ArrayList[T]) ForEach(callback func(T)) {
	list.mu.RLock()
	defer list.mu.RUnlock()

	for _, item := range list.items {
		callback(item)
	}
}

// GetAll retorna una copia de todos los elementos que se encuentra en la lista
func (list *ArrayList[T]) GetAll() []T {
	list.mu.RLock()
	defer list.mu.RUnlock()

	itemsCopy := make([]T, len(list.items))
	copy(itemsCopy, list.items)
	return itemsCopy
}
