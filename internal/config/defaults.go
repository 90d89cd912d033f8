package config

// Default returns the built-in configuration: the standard-library symbol
// vocabulary and the cppreference/MSDN auto-link table every project gets
// before its own configuration and XML-discovered symbols are merged in.
func Default() *Config {
	return &Config{
		Namespaces:      append([]string(nil), defaultNamespaces...),
		Types:           append([]string(nil), defaultTypes...),
		Enums:           append([]string(nil), defaultEnums...),
		Macros:          append([]string(nil), defaultMacros...),
		StringLiterals:  append([]string(nil), defaultStringLiterals...),
		NumericLiterals: nil,
		AutoLinks:       append([]AutoLink(nil), defaultAutoLinks...),
	}
}

var defaultEnums = []string{
	`(?:std::)?ios(?:_base)?::(?:app|binary|in|out|trunc|ate)`,
}

var defaultNamespaces = []string{
	`std`,
	`std::chrono`,
	`std::execution`,
	`std::filesystem`,
	`std::(?:literals::)?(?:chrono|complex|string|string_view)_literals`,
	`std::literals`,
	`std::numbers`,
	`std::ranges`,
	`std::this_thread`,
}

var defaultTypes = []string{
	// standard/built-in types
	`__(?:float|fp)[0-9]{1,3}`,
	`__m[0-9]{1,3}[di]?`,
	`_Float[0-9]{1,3}`,
	`(?:std::)?(?:basic_)?ios(?:_base)?`,
	`(?:std::)?(?:const_)?(?:reverse_)?iterator`,
	`(?:std::)?(?:shared_|recursive_)?(?:timed_)?mutex`,
	`(?:std::)?array`,
	`(?:std::)?byte`,
	`(?:std::)?exception`,
	`(?:std::)?lock_guard`,
	`(?:std::)?optional`,
	`(?:std::)?pair`,
	`(?:std::)?span`,
	`(?:std::)?streamsize`,
	`(?:std::)?string(?:_view)?`,
	`(?:std::)?tuple`,
	`(?:std::)?vector`,
	`(?:std::)?(?:unique|shared|scoped)_(?:ptr|lock)`,
	`(?:std::)?(?:unordered_)?(?:map|set)`,
	`[a-zA-Z_][a-zA-Z_0-9]*_t(?:ype(?:def)?|raits)?`,
	`bool`,
	`char`,
	`double`,
	`float`,
	`int`,
	`long`,
	`short`,
	`signed`,
	`unsigned`,
	`(?:std::)?w?(?:(?:(?:i|o)?(?:string|f))|i|o|io)stream`,
	// documentation-only types
	`[T-V][0-9]`,
	`Foo`,
	`Bar`,
	`[Vv]ec(?:tor)?[1-4][hifd]?`,
	`[Mm]at(?:rix)?[1-4](?:[xX][1-4])?[hifd]?`,
}

var defaultMacros = []string{
	`assert`,
	`offsetof`,
}

var defaultStringLiterals = []string{
	`sv?`,
}

var defaultAutoLinks = []AutoLink{
	{`std::assume_aligned(?:\(\))?`, "https://en.cppreference.com/w/cpp/memory/assume_aligned"},
	{`(?:std::)?nullptr_t`, "https://en.cppreference.com/w/cpp/types/nullptr_t"},
	{`(?:std::)?ptrdiff_t`, "https://en.cppreference.com/w/cpp/types/ptrdiff_t"},
	{`(?:std::)?size_t`, "https://en.cppreference.com/w/cpp/types/size_t"},
	{`(?:std::)?u?int(?:_fast|_least)?(?:8|16|32|64)_ts?`, "https://en.cppreference.com/w/cpp/types/integer"},
	{`(?:std::)?u?int(?:max|ptr)_t`, "https://en.cppreference.com/w/cpp/types/integer"},
	{`(?:wchar|char(?:8|16|32))_ts?`, "https://en.cppreference.com/w/cpp/language/types#Character_types"},
	{`\s(?:<|&lt;)fstream(?:>|&gt;)`, "https://en.cppreference.com/w/cpp/header/fstream"},
	{`\s(?:<|&lt;)iosfwd(?:>|&gt;)`, "https://en.cppreference.com/w/cpp/header/iosfwd"},
	{`\s(?:<|&lt;)iostream(?:>|&gt;)`, "https://en.cppreference.com/w/cpp/header/iostream"},
	{`\s(?:<|&lt;)sstream(?:>|&gt;)`, "https://en.cppreference.com/w/cpp/header/sstream"},
	{`\s(?:<|&lt;)string(?:>|&gt;)`, "https://en.cppreference.com/w/cpp/header/string"},
	{`\s(?:<|&lt;)string_view(?:>|&gt;)`, "https://en.cppreference.com/w/cpp/header/string_view"},
	{`const_cast`, "https://en.cppreference.com/w/cpp/language/const_cast"},
	{`dynamic_cast`, "https://en.cppreference.com/w/cpp/language/dynamic_cast"},
	{`reinterpret_cast`, "https://en.cppreference.com/w/cpp/language/reinterpret_cast"},
	{`static_cast`, "https://en.cppreference.com/w/cpp/language/static_cast"},
	{`std::(?:basic_|w)?fstreams?`, "https://en.cppreference.com/w/cpp/io/basic_fstream"},
	{`std::(?:basic_|w)?ifstreams?`, "https://en.cppreference.com/w/cpp/io/basic_ifstream"},
	{`std::(?:basic_|w)?iostreams?`, "https://en.cppreference.com/w/cpp/io/basic_iostream"},
	{`std::(?:basic_|w)?istreams?`, "https://en.cppreference.com/w/cpp/io/basic_istream"},
	{`std::(?:basic_|w)?istringstreams?`, "https://en.cppreference.com/w/cpp/io/basic_istringstream"},
	{`std::(?:basic_|w)?ofstreams?`, "https://en.cppreference.com/w/cpp/io/basic_ofstream"},
	{`std::(?:basic_|w)?ostreams?`, "https://en.cppreference.com/w/cpp/io/basic_ostream"},
	{`std::(?:basic_|w)?ostringstreams?`, "https://en.cppreference.com/w/cpp/io/basic_ostringstream"},
	{`std::(?:basic_|w)?stringstreams?`, "https://en.cppreference.com/w/cpp/io/basic_stringstream"},
	{`std::(?:basic_|w|u(?:8|16|32))?string_views?`, "https://en.cppreference.com/w/cpp/string/basic_string_view"},
	{`std::(?:basic_|w|u(?:8|16|32))?strings?`, "https://en.cppreference.com/w/cpp/string/basic_string"},
	{`std::[fl]?abs[fl]?(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/math/abs"},
	{`std::acos[fl]?(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/math/acos"},
	{`std::add_[lr]value_reference(?:_t)?`, "https://en.cppreference.com/w/cpp/types/add_reference"},
	{`std::add_(?:cv|const|volatile)(?:_t)?`, "https://en.cppreference.com/w/cpp/types/add_cv"},
	{`std::add_pointer(?:_t)?`, "https://en.cppreference.com/w/cpp/types/add_pointer"},
	{`std::allocators?`, "https://en.cppreference.com/w/cpp/memory/allocator"},
	{`std::arrays?`, "https://en.cppreference.com/w/cpp/container/array"},
	{`std::as_(?:writable_)?bytes(?:\(\))?`, "https://en.cppreference.com/w/cpp/container/span/as_bytes"},
	{`std::asin[fl]?(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/math/asin"},
	{`std::atan2[fl]?(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/math/atan2"},
	{`std::atan[fl]?(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/math/atan"},
	{`std::bad_alloc`, "https://en.cppreference.com/w/cpp/memory/new/bad_alloc"},
	{`std::basic_ios`, "https://en.cppreference.com/w/cpp/io/basic_ios"},
	{`std::bit_cast(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/bit_cast"},
	{`std::bit_ceil(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/bit_ceil"},
	{`std::bit_floor(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/bit_floor"},
	{`std::bit_width(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/bit_width"},
	{`std::bytes?`, "https://en.cppreference.com/w/cpp/types/byte"},
	{`std::ceil[fl]?(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/math/ceil"},
	{`std::char_traits`, "https://en.cppreference.com/w/cpp/string/char_traits"},
	{`std::chrono::durations?`, "https://en.cppreference.com/w/cpp/chrono/duration"},
	{`std::clamp(?:\(\))?`, "https://en.cppreference.com/w/cpp/algorithm/clamp"},
	{`std::conditional(?:_t)?`, "https://en.cppreference.com/w/cpp/types/conditional"},
	{`std::cos[fl]?(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/math/cos"},
	{`std::countl_one(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/countl_one"},
	{`std::countl_zero(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/countl_zero"},
	{`std::countr_one(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/countr_one"},
	{`std::countr_zero(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/countr_zero"},
	{`std::enable_if(?:_t)?`, "https://en.cppreference.com/w/cpp/types/enable_if"},
	{`std::exceptions?`, "https://en.cppreference.com/w/cpp/error/exception"},
	{`std::floor[fl]?(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/math/floor"},
	{`std::fpos`, "https://en.cppreference.com/w/cpp/io/fpos"},
	{`std::has_single_bit(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/has_single_bit"},
	{`std::hash`, "https://en.cppreference.com/w/cpp/utility/hash"},
	{`std::initializer_lists?`, "https://en.cppreference.com/w/cpp/utility/initializer_list"},
	{`std::integral_constants?`, "https://en.cppreference.com/w/cpp/types/integral_constant"},
	{`std::ios(?:_base)?`, "https://en.cppreference.com/w/cpp/io/ios_base"},
	{`std::is_(?:nothrow_)?convertible(?:_v)?`, "https://en.cppreference.com/w/cpp/types/is_convertible"},
	{`std::is_(?:nothrow_)?invocable(?:_r)?`, "https://en.cppreference.com/w/cpp/types/is_invocable"},
	{`std::is_base_of(?:_v)?`, "https://en.cppreference.com/w/cpp/types/is_base_of"},
	{`std::is_constant_evaluated(?:\(\))?`, "https://en.cppreference.com/w/cpp/types/is_constant_evaluated"},
	{`std::is_enum(?:_v)?`, "https://en.cppreference.com/w/cpp/types/is_enum"},
	{`std::is_floating_point(?:_v)?`, "https://en.cppreference.com/w/cpp/types/is_floating_point"},
	{`std::is_integral(?:_v)?`, "https://en.cppreference.com/w/cpp/types/is_integral"},
	{`std::is_pointer(?:_v)?`, "https://en.cppreference.com/w/cpp/types/is_pointer"},
	{`std::is_reference(?:_v)?`, "https://en.cppreference.com/w/cpp/types/is_reference"},
	{`std::is_same(?:_v)?`, "https://en.cppreference.com/w/cpp/types/is_same"},
	{`std::is_signed(?:_v)?`, "https://en.cppreference.com/w/cpp/types/is_signed"},
	{`std::is_unsigned(?:_v)?`, "https://en.cppreference.com/w/cpp/types/is_unsigned"},
	{`std::is_void(?:_v)?`, "https://en.cppreference.com/w/cpp/types/is_void"},
	{`std::launder(?:\(\))?`, "https://en.cppreference.com/w/cpp/utility/launder"},
	{`std::lerp(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/lerp"},
	{`std::maps?`, "https://en.cppreference.com/w/cpp/container/map"},
	{`std::max(?:\(\))?`, "https://en.cppreference.com/w/cpp/algorithm/max"},
	{`std::min(?:\(\))?`, "https://en.cppreference.com/w/cpp/algorithm/min"},
	{`std::numeric_limits::min(?:\(\))?`, "https://en.cppreference.com/w/cpp/types/numeric_limits/min"},
	{`std::numeric_limits::lowest(?:\(\))?`, "https://en.cppreference.com/w/cpp/types/numeric_limits/lowest"},
	{`std::numeric_limits::max(?:\(\))?`, "https://en.cppreference.com/w/cpp/types/numeric_limits/max"},
	{`std::numeric_limits::epsilon(?:\(\))?`, "https://en.cppreference.com/w/cpp/types/numeric_limits/epsilon"},
	{`std::numeric_limits::round_error(?:\(\))?`, "https://en.cppreference.com/w/cpp/types/numeric_limits/round_error"},
	{`std::numeric_limits::infinity(?:\(\))?`, "https://en.cppreference.com/w/cpp/types/numeric_limits/infinity"},
	{`std::numeric_limits::quiet_NaN(?:\(\))?`, "https://en.cppreference.com/w/cpp/types/numeric_limits/quiet_NaN"},
	{`std::numeric_limits::signaling_NaN(?:\(\))?`, "https://en.cppreference.com/w/cpp/types/numeric_limits/signaling_NaN"},
	{`std::numeric_limits::denorm_min(?:\(\))?`, "https://en.cppreference.com/w/cpp/types/numeric_limits/denorm_min"},
	{`std::numeric_limits`, "https://en.cppreference.com/w/cpp/types/numeric_limits"},
	{`std::optionals?`, "https://en.cppreference.com/w/cpp/utility/optional"},
	{`std::pairs?`, "https://en.cppreference.com/w/cpp/utility/pair"},
	{`std::popcount(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/popcount"},
	{`std::remove_cv(?:_t)?`, "https://en.cppreference.com/w/cpp/types/remove_cv"},
	{`std::remove_reference(?:_t)?`, "https://en.cppreference.com/w/cpp/types/remove_reference"},
	{`std::reverse_iterator`, "https://en.cppreference.com/w/cpp/iterator/reverse_iterator"},
	{`std::runtime_errors?`, "https://en.cppreference.com/w/cpp/error/runtime_error"},
	{`std::sets?`, "https://en.cppreference.com/w/cpp/container/set"},
	{`std::shared_ptrs?`, "https://en.cppreference.com/w/cpp/memory/shared_ptr"},
	{`std::sin[fl]?(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/math/sin"},
	{`std::spans?`, "https://en.cppreference.com/w/cpp/container/span"},
	{`std::sqrt[fl]?(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/math/sqrt"},
	{`std::tan[fl]?(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/math/tan"},
	{`std::to_address(?:\(\))?`, "https://en.cppreference.com/w/cpp/memory/to_address"},
	{`std::(?:true|false)_type`, "https://en.cppreference.com/w/cpp/types/integral_constant"},
	{`std::trunc[fl]?(?:\(\))?`, "https://en.cppreference.com/w/cpp/numeric/math/trunc"},
	{`std::tuple_element(?:_t)?`, "https://en.cppreference.com/w/cpp/utility/tuple/tuple_element"},
	{`std::tuple_size(?:_v)?`, "https://en.cppreference.com/w/cpp/utility/tuple/tuple_size"},
	{`std::tuples?`, "https://en.cppreference.com/w/cpp/utility/tuple"},
	{`std::type_identity(?:_t)?`, "https://en.cppreference.com/w/cpp/types/type_identity"},
	{`std::underlying_type(?:_t)?`, "https://en.cppreference.com/w/cpp/types/underlying_type"},
	{`std::unique_ptrs?`, "https://en.cppreference.com/w/cpp/memory/unique_ptr"},
	{`std::unordered_maps?`, "https://en.cppreference.com/w/cpp/container/unordered_map"},
	{`std::unordered_sets?`, "https://en.cppreference.com/w/cpp/container/unordered_set"},
	{`std::vectors?`, "https://en.cppreference.com/w/cpp/container/vector"},
	{
		`std::atomic(?:_(?:bool|[su]?char(?:8_t|16_t|32_t)?|u?short|u?int(?:8_t|16_t|32_t|64_t)?|u?l?long))?`,
		"https://en.cppreference.com/w/cpp/atomic/atomic",
	},
	{
		`(?:L?P)?(?:D?WORD(?:32|64|_PTR)?|HANDLE|HMODULE|BOOL(?:EAN)?|U?SHORT|U?LONG|U?INT(?:8|16|32|64)?|BYTE|VOID|C[WT]?STR)`,
		"https://docs.microsoft.com/en-us/windows/desktop/winprog/windows-data-types",
	},
	{
		`(?:__INTELLISENSE__|_MSC_FULL_VER|_MSC_VER|_MSVC_LANG|_WIN32|_WIN64)`,
		"https://docs.microsoft.com/en-us/cpp/preprocessor/predefined-macros?view=vs-2019",
	},
	{`IUnknowns?`, "https://docs.microsoft.com/en-us/windows/win32/api/unknwn/nn-unknwn-iunknown"},
	{`(?:IUnknown::)?QueryInterface?`, "https://docs.microsoft.com/en-us/windows/win32/api/unknwn/nf-unknwn-iunknown-queryinterface(q)"},
	{`(?:Legacy)?InputIterators?`, "https://en.cppreference.com/w/cpp/named_req/InputIterator"},
	{`(?:Legacy)?OutputIterators?`, "https://en.cppreference.com/w/cpp/named_req/OutputIterator"},
	{`(?:Legacy)?ForwardIterators?`, "https://en.cppreference.com/w/cpp/named_req/ForwardIterator"},
	{`(?:Legacy)?BidirectionalIterators?`, "https://en.cppreference.com/w/cpp/named_req/BidirectionalIterator"},
	{`(?:Legacy)?RandomAccessIterators?`, "https://en.cppreference.com/w/cpp/named_req/RandomAccessIterator"},
	{`(?:Legacy)?ContiguousIterators?`, "https://en.cppreference.com/w/cpp/named_req/ContiguousIterator"},
	{
		`(?:__cplusplus|__STDC_HOSTED__|__FILE__|__LINE__|__DATE__|__TIME__|__STDCPP_DEFAULT_NEW_ALIGNMENT__)`,
		"https://en.cppreference.com/w/cpp/preprocessor/replace",
	},
	{`(?:_Float|__fp)16s?`, "https://gcc.gnu.org/onlinedocs/gcc/Half-Precision.html"},
	{`(?:_Float|__float)(?:128|80)s?`, "https://gcc.gnu.org/onlinedocs/gcc/Floating-Types.html"},
}
