// Package sierra models the concrete type registry of a compiled Cairo
// program as far as return value decoding needs it.
//
// A registry maps TypeID to TypeInfo: the core type Kind, the user type name
// carried in the first generic argument, and the member, variant or inner
// type ids. TypeSizes records how many flat VM values each type occupies;
// the decoder uses it to size pointer dereferences and enum padding.
//
// Registries come from the compiler. Parse reads the JSON form used by
// replay fixtures, and Builder assembles registries programmatically with the
// compiler's layout rules (arrays are two pointers, enums reserve a tag plus
// the largest variant, structs concatenate their members).
package sierra
